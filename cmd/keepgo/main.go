package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/keepgo/keepgo/cli"
	"github.com/keepgo/keepgo/platform"
	"github.com/keepgo/keepgo/vault"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A crash must not dump decrypted secrets to disk.
	_ = platform.DisableCoreDumps()

	vaultPath, err := cli.GetVaultPath()
	if err != nil {
		return fmt.Errorf("determining vault path: %w", err)
	}

	store := vault.NewStore(vaultPath)
	if err := store.Acquire(); err != nil {
		return err
	}
	defer store.Release()

	var session *vault.Session
	if !store.Exists() {
		fmt.Println("No vault found. Setting up new master password.")
		master := cli.ReadPasswordMasked("Set master password: ")
		confirm := cli.ReadPasswordMasked("Confirm master password: ")
		match := string(master) == string(confirm)
		vault.Zero(confirm)
		if !match {
			vault.Zero(master)
			return errors.New("passwords do not match")
		}

		session, err = vault.Create(master)
		vault.Zero(master)
		if err != nil {
			return fmt.Errorf("creating vault: %w", err)
		}
		raw, err := session.Persist()
		if err != nil {
			session.Lock()
			return err
		}
		if err := store.WriteAtomic(raw); err != nil {
			session.Lock()
			return err
		}
	} else {
		raw, err := store.Read()
		if err != nil {
			return err
		}
		master := cli.ReadPasswordMasked("Enter master password: ")
		session, err = vault.Unlock(master, raw)
		vault.Zero(master)
		if err != nil {
			if errors.Is(err, vault.ErrUnsupportedFormat) {
				return err
			}
			return errors.New("cannot open vault: wrong password or corrupted file")
		}
	}
	defer session.Lock()

	if len(os.Args) > 1 && os.Args[1] == "tui" {
		cli.RunTUI(session, store)
		return nil
	}
	cli.RunCommands(session, store)
	return nil
}
