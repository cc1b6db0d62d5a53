// Package main is the entry point for the ratings application
package main

import (
	"github.com/plazar/ratings/cmd"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	cmd.Execute()
}
