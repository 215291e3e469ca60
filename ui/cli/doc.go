// Copyright (c) 2026 AMPBoard Team
// AMPBoard - local development dashboard
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for AMPBoard using Cobra.
// It wires configuration, logging and i18n, and provides commands that
// delegate to the render, vhost and export packages. CLI code should remain
// thin.
package cli
