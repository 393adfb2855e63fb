// Package page drives a headless browser tab for in-page caption retrieval.
//
// The Loader opens a watch page and hands back an Evaluator bound to that
// tab. Scripts run inside the page, so requests they issue are same-origin
// with the player and carry its cookies. RodLoader is the go-rod backed
// implementation; tests substitute their own Evaluator.
package page
