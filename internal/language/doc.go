// Package language turns caption language codes (BCP 47 tags such as "en",
// "en-GB" or "pt-BR") into base codes and human-readable names for track
// listings and transcript metadata.
package language
