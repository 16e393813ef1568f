/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/fjordstone/pbfile/cmd/pbfile/cmd"
)

func main() {
	cmd.Execute()
}
