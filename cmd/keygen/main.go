// Command keygen generates a new keypair, writing "<name>.priv.cbor" and
// "<name>.pub.pem" to the current directory.
//
// Usage: keygen <name> [-prompt]
//
// With -prompt, keygen reads a passphrase from the terminal without
// echoing it and encrypts the private key file with it.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/ledgerchain/ledger/pkg/crypto"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 || (len(os.Args) == 3 && os.Args[2] != "-prompt") {
		fmt.Fprintln(os.Stderr, "usage: keygen <name> [-prompt]")
		os.Exit(1)
	}
	name := os.Args[1]

	var passphrase []byte
	if len(os.Args) == 3 {
		fmt.Fprint(os.Stderr, "passphrase: ")
		pass, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "keygen: read passphrase: %v\n", err)
			os.Exit(1)
		}
		passphrase = pass
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keygen: generate key: %v\n", err)
		os.Exit(1)
	}

	privPath := name + ".priv.cbor"
	pubPath := name + ".pub.pem"

	if err := crypto.SavePrivateKey(privPath, key, passphrase); err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}
	if err := crypto.SavePublicKeyPEM(pubPath, key.PublicKey()); err != nil {
		fmt.Fprintf(os.Stderr, "keygen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s and %s\n", privPath, pubPath)
}
