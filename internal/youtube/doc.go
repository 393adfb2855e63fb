// Package youtube is a thin client for the caption endpoints of the YouTube
// Data API v3: listing the tracks of a video and downloading one as WebVTT.
// Non-success responses surface as *APIError carrying the upstream message.
// Outbound calls are optionally paced with a token bucket.
package youtube
