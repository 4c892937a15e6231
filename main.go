/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/gestion-rh/apiserver/cmd"

func main() {
	cmd.Execute()
}
