// Package navigation loads the site config and turns its sidebar into the
// linear page sequence used for previous/next links.
package navigation
