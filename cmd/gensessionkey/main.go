package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
)

// Writes a random 32-byte hex key for auth.session_key
// (or TODOAPP_AUTH_SESSION_KEY). Refuses to overwrite.
func main() {
	keyFile := flag.String("out", "session.key", "File to write the hex key to")
	flag.Parse()

	if _, err := os.Stat(*keyFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists. Refusing to overwrite.\n", *keyFile)
		os.Exit(1)
	}
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		fmt.Fprintln(os.Stderr, "Error generating random key")
		os.Exit(1)
	}
	hexKey := hex.EncodeToString(key)
	if err := os.WriteFile(*keyFile, []byte(hexKey+"\n"), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *keyFile, err)
		os.Exit(1)
	}
	fmt.Printf("Session key written to %s\n", *keyFile)
}
