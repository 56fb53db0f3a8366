// Package utils holds small validation helpers shared by the transports and
// providers: payload limits, command-name checks and argument extraction.
package utils
