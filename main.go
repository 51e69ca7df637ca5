package main

import "github.com/actions-marketplace-validations/WolffM-vibecop-sub001/cmd"

func main() {
	cmd.Execute()
}
