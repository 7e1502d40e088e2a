// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/climabill/climabill/cmd"

func main() {
	cmd.Execute()
}
