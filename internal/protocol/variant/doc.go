// Package variant holds the concrete SigmaStudio header layouts per DSP
// family and a registry to select one by name.
package variant
