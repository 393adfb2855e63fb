package page

// TrackListScript returns the player's caption track list as a JSON array
// string ("[]" when the player has none).
const TrackListScript = `() => {
  const player = window.ytInitialPlayerResponse;
  const renderer = player && player.captions && player.captions.playerCaptionsTracklistRenderer;
  return JSON.stringify((renderer && renderer.captionTracks) || []);
}`

// FetchTextScript fetches its single argument from inside the page and
// resolves with the response body. Non-2xx responses reject.
const FetchTextScript = `(url) => fetch(url, {credentials: "include"}).then((resp) => {
  if (!resp.ok) {
    throw new Error("Failed to fetch captions: HTTP " + resp.status);
  }
  return resp.text();
})`
