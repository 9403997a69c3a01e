package wamedia_test

import (
	"bytes"
	"encoding/base64"
	"fmt"

	wamedia "github.com/mediavault/wamedia-go"
	"github.com/mediavault/wamedia-go/internal/crypto"
)

func ExampleDecrypt() {
	mediaKey := bytes.Repeat([]byte{0x01}, 32)
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}

	blob, err := crypto.EncryptMediaForTesting(mediaKey, png)
	if err != nil {
		panic(err)
	}

	plaintext, err := wamedia.Decrypt(base64.StdEncoding.EncodeToString(mediaKey), blob)
	if err != nil {
		panic(err)
	}

	fmt.Println(len(plaintext), wamedia.SniffMediaType(plaintext))
	// Output: 12 image/png
}

func ExampleParseMediaMessage() {
	msg, err := wamedia.ParseMediaMessage([]byte(`{
		"message": {
			"audioMessage": {
				"directPath": "/v/t62.7117-24/abc.enc",
				"mediaKey": "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=",
				"mimetype": "audio/ogg; codecs=opus",
				"fileLength": "4096"
			}
		}
	}`))
	if err != nil {
		panic(err)
	}

	fmt.Println(msg.Kind, msg.FileLength, msg.Validate() == nil)
	fmt.Println(msg.ResolveURL(""))
	// Output:
	// audio 4096 true
	// https://mmg.whatsapp.net/v/t62.7117-24/abc.enc
}
