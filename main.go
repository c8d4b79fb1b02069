package main

import (
	"log"

	"github.com/talentmatch/go-match-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
