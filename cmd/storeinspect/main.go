// Command storeinspect dumps the persisted collections for debugging.
package main

import (
	json "github.com/go-json-experiment/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/basetic/osint-terminal/internal/domain"
	"github.com/basetic/osint-terminal/internal/store"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "osint-terminal", "db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Store Inspection ===")
	fmt.Println()

	err = db.View(func(txn *badger.Txn) error {
		for _, key := range store.Keys {
			item, err := txn.Get([]byte(key))
			if err != nil {
				fmt.Printf("%-12s (not persisted)\n", key)
				continue
			}

			var raw []byte
			if err := item.Value(func(val []byte) error {
				raw = append(raw[:0], val...)
				return nil
			}); err != nil {
				return err
			}

			describe(string(key), raw)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Inspection failed: %v", err)
	}
}

func describe(key string, raw []byte) {
	switch store.Key(key) {
	case store.KeyTools:
		var tools []domain.Tool
		if err := json.Unmarshal(raw, &tools); err != nil {
			fmt.Printf("%-12s (unparseable: %v)\n", key, err)
			return
		}
		fmt.Printf("%-12s %d entries\n", key, len(tools))
		for _, tool := range tools {
			fmt.Printf("    %s  %s -> %s\n", tool.ID, tool.Name, tool.CategoryID)
		}
	case store.KeyCategories:
		var categories []domain.Category
		if err := json.Unmarshal(raw, &categories); err != nil {
			fmt.Printf("%-12s (unparseable: %v)\n", key, err)
			return
		}
		fmt.Printf("%-12s %d entries\n", key, len(categories))
		for _, category := range categories {
			fmt.Printf("    %s  %s\n", category.ID, category.Name)
		}
	case store.KeyAccounts:
		var accounts []domain.Account
		if err := json.Unmarshal(raw, &accounts); err != nil {
			fmt.Printf("%-12s (unparseable: %v)\n", key, err)
			return
		}
		fmt.Printf("%-12s %d entries\n", key, len(accounts))
		for _, account := range accounts {
			fmt.Printf("    %s  %s (%s)\n", account.ID, account.Username, account.Role)
		}
	case store.KeyMembers:
		var members []domain.Member
		if err := json.Unmarshal(raw, &members); err != nil {
			fmt.Printf("%-12s (unparseable: %v)\n", key, err)
			return
		}
		fmt.Printf("%-12s %d entries\n", key, len(members))
		for _, member := range members {
			fmt.Printf("    %s  %s <%s> since %s\n", member.ID, member.Name, member.Email, member.JoinedAt)
		}
	default:
		fmt.Printf("%-12s %s\n", key, raw)
	}
}
