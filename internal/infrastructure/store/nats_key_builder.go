// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package store

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/televeda/scheduling-service/internal/logging"
)

// Common key prefixes
const (
	KeyPrefixClass     = "class"
	KeyPrefixException = "exception"
	KeyPrefixCommunity = "community"
)

// KeyBuilder provides utilities for building consistent NATS KV keys
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with an optional prefix
func NewKeyBuilder(prefix string) *KeyBuilder {
	return &KeyBuilder{
		prefix: prefix,
	}
}

// EntityKey builds a key for an entity (e.g., "class/uid-123")
func (kb *KeyBuilder) EntityKey(entityType, uid string) string {
	key := fmt.Sprintf("%s/%s", entityType, uid)
	return kb.applyPrefix(key, false)
}

// ExceptionKey builds the encoded key for a visibility exception. The key
// embeds all three coordinates so a single occurrence can carry one exception
// per community. The date segment is normalized to UTC RFC3339, which contains
// characters NATS KV keys do not allow, hence the encoding.
func (kb *KeyBuilder) ExceptionKey(classUID string, date time.Time, communityUID string) string {
	key := fmt.Sprintf("%s/%s/%s/%s",
		KeyPrefixException, classUID, date.UTC().Format(time.RFC3339), communityUID)
	return kb.applyPrefix(key, true)
}

// ExceptionClassDatePattern builds the decoded-key pattern matching every
// exception for one occurrence of a class, across all communities.
func (kb *KeyBuilder) ExceptionClassDatePattern(classUID string, date time.Time) string {
	return fmt.Sprintf("%s/%s/%s/",
		KeyPrefixException, classUID, date.UTC().Format(time.RFC3339))
}

// ExceptionClassPattern builds the decoded-key pattern matching every
// exception for a class.
func (kb *KeyBuilder) ExceptionClassPattern(classUID string) string {
	return fmt.Sprintf("%s/%s/", KeyPrefixException, classUID)
}

// CompoundKey builds a compound key from multiple parts
func (kb *KeyBuilder) CompoundKey(parts ...string) string {
	key := strings.Join(parts, "/")
	return kb.applyPrefix(key, false)
}

// applyPrefix adds the builder's prefix if one is set
func (kb *KeyBuilder) applyPrefix(key string, encode bool) string {
	var fullKey string
	if kb.prefix == "" {
		fullKey = key
	} else {
		fullKey = fmt.Sprintf("%s/%s", kb.prefix, key)
	}

	if encode {
		encodedKey, err := kb.EncodeKey(fullKey)
		if err != nil {
			slog.Error("error encoding key", logging.ErrKey, err, "key", fullKey)
			return fullKey
		}
		return encodedKey
	}
	return fullKey
}

// EncodeKey encodes a key for NATS KV store.
// From https://github.com/ripienaar/encodedkv
//
// NATS limitations: https://docs.nats.io/nats-concepts/jetstream/key-value-store#notes
func (kb *KeyBuilder) EncodeKey(key string) (string, error) {
	res := []string{}
	for _, part := range strings.Split(strings.TrimPrefix(key, "/"), "/") {
		if part == ">" || part == "*" {
			res = append(res, part)
			continue
		}

		dst := make([]byte, base64.StdEncoding.EncodedLen(len(part)))
		base64.StdEncoding.Encode(dst, []byte(part))
		res = append(res, string(dst))
	}

	if len(res) == 0 {
		return "", nats.ErrInvalidKey
	}

	return strings.Join(res, "."), nil
}

// DecodeKey decodes a key for NATS KV store.
// From https://github.com/ripienaar/encodedkv
//
// NATS limitations: https://docs.nats.io/nats-concepts/jetstream/key-value-store#notes
func (kb *KeyBuilder) DecodeKey(key string) (string, error) {
	res := []string{}
	for _, part := range strings.Split(key, ".") {
		k, err := base64.StdEncoding.DecodeString(part)
		if err != nil {
			return "", err
		}

		res = append(res, string(k))
	}

	if len(res) == 0 {
		return "", nats.ErrInvalidKey
	}

	return strings.Join(res, "/"), nil
}
