// Package server is a local preview server for a generated bundle.
//
// It lists and edits files, renders icons, serves composed previews under a
// restrictive Content-Security-Policy, renders the guides and pushes reload
// notices to connected browsers over a websocket whenever the bundle
// changes, through an edit or on disk.
//
// Routes:
//
//	GET  /api/files                    grouped listing (JSON)
//	GET  /api/files/{path}             raw content
//	PUT  /api/files/{path}             replace content
//	POST /api/icons/{path}/mutate      apply an icon edit (JSON)
//	GET  /api/audit/{path}             preview audit findings (JSON)
//	GET  /api/guides/{name}            guide outline (JSON)
//	GET  /icons/{path}?scale=N         rendered PNG
//	GET  /preview/{path}               composed HTML, sandboxed
//	GET  /guides/{testing|security}    rendered guide, sandboxed
//	GET  /download                     zip archive of the bundle
//	GET  /download/{path}              single file download
//	GET  /ws                           reload notices
package server
