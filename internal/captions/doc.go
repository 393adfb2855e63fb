// Package captions describes caption tracks and the rules for choosing one.
//
// Tracks come from two places: the player response embedded in a watch page
// (ExtractTracks, ParseTrackList) and the Data API caption listing
// (internal/youtube). SelectTrack applies the same preference to both.
package captions
