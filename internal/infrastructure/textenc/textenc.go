// Package textenc 提供按 IANA 名称的字符编码转换
package textenc

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// isUTF8 判断是否为 UTF-8 (无需转换)
func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// lookup 按 IANA 名称查找编码
func lookup(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported text encoding: %q", name)
	}
	return enc, nil
}

// Decode 将指定编码的字节序列转为 UTF-8
func Decode(data []byte, name string) ([]byte, error) {
	if isUTF8(name) {
		return data, nil
	}
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s text: %w", name, err)
	}
	return out, nil
}

// Encode 将 UTF-8 字节序列转为指定编码
func Encode(data []byte, name string) ([]byte, error) {
	if isUTF8(name) {
		return data, nil
	}
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s text: %w", name, err)
	}
	return out, nil
}
