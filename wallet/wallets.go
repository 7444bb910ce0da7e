package wallet

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

/**
 * Created by GoLand.
 * Project: golang-walletauth
 * User: PETER DANIEL KILIMBA
 * Date: 18/12/2025
 * Time: 11:47
 */

// walletFile is the name of the wallet file of a profile inside the data directory.
const walletFile = "wallets_%s.data"

// Wallets is a collection of wallets keyed by their Base58 address,
// persisted to one file per profile.
type Wallets struct {
	Wallets map[string]*Wallet

	path string
}

// CreateWallets initializes a wallet collection and loads the profile's wallet file
// from dir if one exists. A missing file is not an error; it is created on the first SaveFile.
func CreateWallets(dir, profile string) (*Wallets, error) {
	ws := &Wallets{
		Wallets: make(map[string]*Wallet),
		path:    filepath.Join(dir, fmt.Sprintf(walletFile, profile)),
	}

	if err := ws.LoadFile(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return ws, nil
}

// AddWallet creates a new wallet, adds it to the collection and returns its address.
// The caller persists the change with SaveFile.
func (ws *Wallets) AddWallet() (string, error) {
	w, err := MakeWallet()
	if err != nil {
		return "", err
	}

	address := w.Address()
	ws.Wallets[address] = w
	return address, nil
}

// GetAllAddresses returns the addresses of all wallets in the collection, sorted.
func (ws *Wallets) GetAllAddresses() []string {
	addresses := make([]string, 0, len(ws.Wallets))
	for address := range ws.Wallets {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses
}

// GetWallet retrieves a wallet by its address.
func (ws *Wallets) GetWallet(address string) (*Wallet, bool) {
	w, ok := ws.Wallets[address]
	return w, ok
}

// LoadFile reads the wallet file and replaces the in-memory collection with its content.
func (ws *Wallets) LoadFile() error {
	fileContent, err := os.ReadFile(ws.path)
	if err != nil {
		return err
	}

	var loaded struct {
		Wallets map[string]*Wallet
	}
	if err := gob.NewDecoder(bytes.NewReader(fileContent)).Decode(&loaded); err != nil {
		return fmt.Errorf("wallet: decode %s: %w", ws.path, err)
	}

	if loaded.Wallets == nil {
		loaded.Wallets = make(map[string]*Wallet)
	}
	ws.Wallets = loaded.Wallets
	return nil
}

// SaveFile serializes all wallets to disk. The file holds private keys, so it
// is only readable by its owner.
func (ws *Wallets) SaveFile() error {
	var content bytes.Buffer

	err := gob.NewEncoder(&content).Encode(struct {
		Wallets map[string]*Wallet
	}{ws.Wallets})
	if err != nil {
		return fmt.Errorf("wallet: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(ws.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(ws.path, content.Bytes(), 0o600)
}
