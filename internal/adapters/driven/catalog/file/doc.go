// Package file loads the item/trait catalog from a local file.
//
// The format follows the file extension: .toml, .yaml/.yml or .json. All
// three share one shape:
//
//	[[traits]]
//	name = "Sorcerer"
//	thresholds = [2, 4, 6]
//
//	[[items]]
//	name = "Ahri"
//	cost = 4
//	traits = ["Sorcerer", "Spirit"]
//
// An item may carry an explicit id in [0, 64); otherwise its position in the
// file is used. Watch reports edits to the file through fsnotify.
package file
