package main

import "github.com/chrisdamba/menuintel/cmd"

func main() {
	cmd.Execute()
}
