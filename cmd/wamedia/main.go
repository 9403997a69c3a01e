// Command wamedia downloads and decrypts encrypted media attachments.
//
// Usage:
//
//	wamedia decrypt [out]                      message JSON on stdin
//	wamedia decrypt-file <mediaKey> <in> <out> decrypt a local blob
//	wamedia sniff <file>                       detect the media type
//	wamedia validate-key <mediaKey>            check a base64 media key
//	wamedia derive <mediaKey>                  print the expanded keys
//
// Results are printed as JSON on stdout; logs go to stderr.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	wamedia "github.com/mediavault/wamedia-go"
	"github.com/mediavault/wamedia-go/internal/crypto"
	"github.com/mediavault/wamedia-go/mediatype"
)

const usage = "usage: wamedia <decrypt|decrypt-file|sniff|validate-key|derive> [args]"

var errInvalidKey = errors.New("invalid media key")

// Config holds the process streams and environment used by run.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

// DefaultConfig returns a Config bound to the process.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

// DecryptOutput is printed after a successful decryption.
type DecryptOutput struct {
	Suite             string `json:"suite"`
	Output            string `json:"output,omitempty"`
	Data              string `json:"data,omitempty"`
	Kind              string `json:"kind,omitempty"`
	Size              int    `json:"size"`
	SHA256            string `json:"sha256"`
	DeclaredMimeType  string `json:"declaredMimeType,omitempty"`
	DetectedMimeType  string `json:"detectedMimeType"`
	MimeMatches       bool   `json:"mimeMatches"`
	EncSHA256Verified bool   `json:"encSha256Verified"`
	SHA256Verified    bool   `json:"sha256Verified"`
	LengthVerified    bool   `json:"lengthVerified"`
}

// KeysOutput is printed by the derive command.
type KeysOutput struct {
	Suite     string `json:"suite"`
	IV        string `json:"iv"`
	CipherKey string `json:"cipherKey"`
	MACKey    string `json:"macKey"`
	RefKey    string `json:"refKey"`
}

func run(args []string, cfg *Config) error {
	if len(args) < 2 {
		return errors.New(usage)
	}
	if cfg.Getenv == nil {
		cfg.Getenv = os.Getenv
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}

	settings, err := loadSettings(cfg.Getenv)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Stderr, settings.LogLevel)
	defer logger.Sync()

	command, rest := args[1], args[2:]
	switch command {
	case "decrypt", "decrypt-file":
		client, err := wamedia.New(append(settings.clientOptions(), wamedia.WithLogger(logger))...)
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		defer client.Close()

		if command == "decrypt" {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return runDecrypt(ctx, client, cfg, rest)
		}
		return runDecryptFile(client, cfg, rest)
	case "sniff":
		return runSniff(cfg, rest)
	case "validate-key":
		return runValidateKey(cfg, rest)
	case "derive":
		return runDerive(cfg, rest)
	default:
		logger.Debug("unknown command", zap.String("command", command))
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runDecrypt(ctx context.Context, client *wamedia.Client, cfg *Config, args []string) error {
	data, err := io.ReadAll(cfg.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	msg, err := wamedia.ParseMediaMessage(data)
	if err != nil {
		return fmt.Errorf("parse message: %w", err)
	}

	media, err := client.Decrypt(ctx, msg)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	out := decryptOutput(media)
	if len(args) > 0 {
		if err := os.WriteFile(args[0], media.Data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		out.Output = args[0]
	} else {
		out.Data = base64.StdEncoding.EncodeToString(media.Data)
	}

	return writeJSON(cfg.Stdout, out)
}

func runDecryptFile(client *wamedia.Client, cfg *Config, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: wamedia decrypt-file <mediaKey> <in> <out>")
	}

	blob, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	media, err := client.DecryptBlob(&wamedia.MediaMessage{MediaKey: args[0]}, blob)
	if err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}

	if err := os.WriteFile(args[2], media.Data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	out := decryptOutput(media)
	out.Output = args[2]
	return writeJSON(cfg.Stdout, out)
}

func runSniff(cfg *Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: wamedia sniff <file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	head := make([]byte, mediatype.SniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read input: %w", err)
	}

	return writeJSON(cfg.Stdout, map[string]string{"mimeType": wamedia.SniffMediaType(head[:n])})
}

func runValidateKey(cfg *Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: wamedia validate-key <mediaKey>")
	}

	valid := wamedia.ValidateMediaKeyFormat(args[0])
	if err := writeJSON(cfg.Stdout, map[string]bool{"valid": valid}); err != nil {
		return err
	}
	if !valid {
		return errInvalidKey
	}
	return nil
}

func runDerive(cfg *Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: wamedia derive <mediaKey>")
	}

	keys, err := wamedia.DeriveKeys(args[0])
	if err != nil {
		return fmt.Errorf("derive: %w", err)
	}

	enc := base64.StdEncoding.EncodeToString
	return writeJSON(cfg.Stdout, KeysOutput{
		Suite:     wamedia.Ciphersuite,
		IV:        enc(keys.IV),
		CipherKey: enc(keys.CipherKey),
		MACKey:    enc(keys.MACKey),
		RefKey:    enc(keys.RefKey),
	})
}

func decryptOutput(media *wamedia.Media) DecryptOutput {
	return DecryptOutput{
		Suite:             wamedia.Ciphersuite,
		Kind:              media.Kind,
		Size:              media.Size,
		SHA256:            crypto.DigestBase64(media.Data),
		DeclaredMimeType:  media.DeclaredMimeType,
		DetectedMimeType:  media.DetectedMimeType,
		MimeMatches:       media.MimeMatches,
		EncSHA256Verified: media.EncSHA256Verified,
		SHA256Verified:    media.SHA256Verified,
		LengthVerified:    media.LengthVerified,
	}
}

func writeJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
