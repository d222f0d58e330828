// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config locates the diary on disk and persists its settings.
//
// Filesystem locations ([Paths]) are assembled from several sources in the
// following priority order (later sources override earlier non-zero fields):
//  1. Built-in per-OS defaults
//  2. Environment variables prefixed with MDIARY_
//  3. Command-line flags
//
// The diary settings themselves (store file name and whether a key is used)
// live in an INI file, see [LoadSettings], [SaveSettings] and
// [ResetSettings].
package config
