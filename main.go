package main

import (
	"log"

	"github.com/Lucas-Iglesia/Thesis-Carola/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
