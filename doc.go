// Package wamedia decrypts media attachments (images, audio, video,
// documents) protected by the messaging platform's media encryption scheme.
//
// The stateless functions [Decrypt], [DeriveKeys], [ValidatePayloadFormat],
// [ValidateMediaKeyFormat], [VerifyPlaintextDigest], [VerifyCiphertextDigest]
// and [SniffMediaType] operate purely on in-memory buffers and never perform
// I/O:
//
//	plaintext, err := wamedia.Decrypt(mediaKeyBase64, blob)
//	if errors.Is(err, wamedia.ErrMACMismatch) {
//	    // tampered or truncated blob, or the wrong key
//	}
//	fmt.Println(wamedia.SniffMediaType(plaintext))
//
// The [Client] adds the surrounding plumbing: it parses a message description,
// downloads the encrypted blob, verifies the declared digests and returns a
// [Media] value:
//
//	client, err := wamedia.New(wamedia.WithTimeout(30 * time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	msg, err := wamedia.ParseMediaMessage(messageJSON)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	media, err := client.Decrypt(ctx, msg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(media.MimeType(), media.Size)
package wamedia
