// Package main точка входа административной утилиты collabctl.
package main

import "github.com/ignatzorin/collabhub-backend/cmd/collabctl/cmd"

var version = "dev"

func main() {
	cmd.Version = version
	cmd.Execute()
}
