// Package markup renders the navigation markup stored in Header and Footer content.
//
// The output is a fixed HTML fragment built with utility classes. Page names, paths and
// the site name are escaped; a caller-supplied copyright text is emitted as is so that
// authors can use entities such as &copy;.
package markup
