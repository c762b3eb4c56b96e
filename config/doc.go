// SPDX-License-Identifier: EPL-2.0

// Package config loads grooverider settings from a YAML document.
//
// Every field has a default, so a file only needs the values it changes:
//
//	record_dimensions:
//	  record_diameter_mm: 175
//	groove_geometry:
//	  groove_pitch_mm: 0.25
//
// After the file is read, GROOVERIDER_RPM, GROOVERIDER_SAMPLE_RATE and
// GROOVERIDER_LOG_LEVEL override their settings, and the result is
// validated as a whole. The converters (Profile, Conditioning, Resolution,
// Extraction) hand the settings to the packages that use them.
package config
