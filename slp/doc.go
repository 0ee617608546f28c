// Package slp implements a decoder for individual frames of SLP sprite
// sheets, as shipped with Age of Empires and related games.
//
// A frame is decoded into three parts: the primary image, an outline image
// (the silhouette drawn when a unit is hidden behind something), and a
// sparse list of pixels that must be recolored for the owning player.
//
// Locating frames inside a sheet is left to the caller; see package sheet
// for a reader of whole .slp files. Colors are resolved through a Palette,
// which package palette implements for the usual .pal files.
package slp
