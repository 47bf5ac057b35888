// Package render turns a form.Form into accessible HTML. Inputs carry the
// aria attributes of their displayed error, and messages are sanitised before
// they reach the templates.
package render
