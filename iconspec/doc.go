// Package iconspec parses and edits icon descriptions.
//
// An icon description is a short, loosely formatted sentence produced by a
// code generator, for example:
//
//	PNG icon, 48x48, style gradient, background #4F46E5 #9333EA, foreground #FFFFFF, text "EX" centered.
//
// The description string is always the source of truth. [Parse] derives an
// [IconSpec] from it on every call and never fails: fields that cannot be
// found take their defaults. [Mutate] edits exactly one clause of the string
// and leaves the rest of the text untouched.
//
// # Grammar
//
// Each field is located independently, so clause order does not matter:
//
//   - size: the first "<int> x <int>" pair (default 48x48)
//   - background: "background" followed by one or more hex tokens, falling
//     back to the legacy "solid <hex|name> background" phrasing, then #3C78DC
//   - foreground: "foreground" followed by one hex token (default #FFFFFF)
//   - label: the first double-quoted, then single-quoted, substring
//   - style: "style flat" or "style gradient"
//
// A hex token is 6 or 3 hex digits with an optional leading '#'. Matching is
// case-insensitive and color tokens are kept exactly as written.
package iconspec
