// Command walletctl is a thin demonstration CLI wiring noderpc and
// wallet together: generate a keypair, sync against a node, and inspect
// balances.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"coinwallet/noderpc"
	"coinwallet/types"
	"coinwallet/walletcrypto"
	"coinwallet/wallet"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "gen-key":
		runGenKey()
	case "sync":
		runSync(os.Args[2:])
	case "balance":
		runBalance(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: walletctl <gen-key|sync|balance> [flags]")
}

func runGenKey() {
	kp, err := walletcrypto.GenerateKeyPair()
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate key:", err)
		os.Exit(1)
	}
	fmt.Printf("private: %s\n", hex.EncodeToString(kp.PrivateKey[:]))
	fmt.Printf("public:  %s\n", hex.EncodeToString(kp.PublicKey[:]))
}

func parseKeys(privHex string) (walletcrypto.KeyPair, error) {
	privBytes, err := hex.DecodeString(privHex)
	if err != nil || len(privBytes) != 32 {
		return walletcrypto.KeyPair{}, fmt.Errorf("invalid private key hex")
	}
	var priv types.PrivateKey
	copy(priv[:], privBytes)
	kp, err := walletcrypto.KeyPairFromPrivate(priv)
	if err != nil {
		return walletcrypto.KeyPair{}, err
	}
	return *kp, nil
}

func runSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	nodeURL := fs.String("node", "http://127.0.0.1:8070", "node HTTP base URL")
	privHex := fs.String("priv", "", "hex-encoded private spend key")
	timeout := fs.Duration("timeout", 30*time.Second, "sync context timeout")
	fs.Parse(args)

	kp, err := parseKeys(*privHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	transport := noderpc.NewHTTPTransport(*nodeURL, nil)
	w := wallet.New(wallet.Config{
		Transport: transport,
		Keys:      kp,
		Logger:    logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := w.PerformSync(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(os.Stderr, "sync:", err)
		os.Exit(1)
	}

	state := w.GetSyncState()
	fmt.Printf("current height: %d, network height: %d, idle: %v\n", state.CurrentHeight, state.NetworkHeight, state.Idle)
	fmt.Printf("available: %d, locked: %d, staking_locked: %d\n",
		w.GetAvailableBalance(), w.GetLockedBalance(), w.GetStakingLockedBalance())
}

func runBalance(args []string) {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	nodeURL := fs.String("node", "http://127.0.0.1:8070", "node HTTP base URL")
	privHex := fs.String("priv", "", "hex-encoded private spend key")
	fs.Parse(args)

	kp, err := parseKeys(*privHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	transport := noderpc.NewHTTPTransport(*nodeURL, nil)
	w := wallet.New(wallet.Config{Transport: transport, Keys: kp})

	fmt.Printf("available: %d, locked: %d, staking_locked: %d\n",
		w.GetAvailableBalance(), w.GetLockedBalance(), w.GetStakingLockedBalance())
}
