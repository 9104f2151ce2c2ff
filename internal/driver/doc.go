// Package driver runs the lexer and parser over real inputs: whole files
// (Tokenize), files split into lines (ParseLines), directories of *.kg
// files (ParseDir) and in-memory text (ParseSource).
//
// Every line is its own parse unit with a fresh builder and diagnostic bag,
// so an error on one line never affects the next. Units can be cached on
// disk by content hash and options (DiskCache).
package driver
