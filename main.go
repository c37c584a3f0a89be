package main

import "github.com/SamridhiParajuli/store-dashboard/cmd"

func main() {
	cmd.Execute()
}
