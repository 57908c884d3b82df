// Package aggregate builds the interactive script menu from every annotation
// source a manifest carries.
//
// Sources are consulted in a fixed cascade: lifecycle scripts (when
// enabled), the canonical config, the mixed-shape better-scripts object,
// header-organized groups, then the ntl and scripts-info description maps.
// Every runnable script appears exactly once in the result. Scripts no
// source claimed are collected under "Other Available Scripts", and
// documented scripts without a runnable command are kept but flagged
// missing.
package aggregate
