// Package home serves the database overview page.
package home

// indexTitle is the page title of the overview.
const indexTitle = "Home"
