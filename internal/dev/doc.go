// Package dev implements the live-preview machinery for the preview
// command: a WebSocket reload hub that pushes refresh and error messages to
// open browser tabs, and a polling file watcher that detects edits to
// document description files.
package dev
