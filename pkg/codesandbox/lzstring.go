package codesandbox

import (
	"strings"
	"unicode/utf16"
)

// keyStrBase64 is the LZ-string base64 alphabet; '=' decodes to 64.
const keyStrBase64 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="

// compressToBase64 is LZString.compressToBase64. The input is processed as
// UTF-16 code units so the output matches the JavaScript implementation.
func compressToBase64(input string) string {
	if input == "" {
		return ""
	}
	out := compress(utf16.Encode([]rune(input)), 6, func(v int) byte { return keyStrBase64[v] })
	switch len(out) % 4 {
	case 1:
		return out + "==="
	case 2:
		return out + "=="
	case 3:
		return out + "="
	}
	return out
}

// decompressFromBase64 is LZString.decompressFromBase64. ok is false when
// the input is not a valid stream.
func decompressFromBase64(input string) (string, bool) {
	if input == "" {
		return "", false
	}
	units, ok := decompress(len(input), 32, func(i int) int {
		if i >= len(input) {
			return 0
		}
		return max(strings.IndexByte(keyStrBase64, input[i]), 0)
	})
	if !ok {
		return "", false
	}
	return string(utf16.Decode(units)), true
}

// bitWriter packs values LSB-first into characters of bitsPerChar bits.
type bitWriter struct {
	bitsPerChar int
	char        func(int) byte
	val         int
	pos         int
	out         strings.Builder
}

func (w *bitWriter) write(value, bits int) {
	for i := 0; i < bits; i++ {
		w.val = (w.val << 1) | (value & 1)
		if w.pos == w.bitsPerChar-1 {
			w.pos = 0
			w.out.WriteByte(w.char(w.val))
			w.val = 0
		} else {
			w.pos++
		}
		value >>= 1
	}
}

func (w *bitWriter) flush() {
	for {
		w.val <<= 1
		if w.pos == w.bitsPerChar-1 {
			w.out.WriteByte(w.char(w.val))
			return
		}
		w.pos++
	}
}

func compress(units []uint16, bitsPerChar int, char func(int) byte) string {
	// Dictionary keys are substrings of units; raw holds the two bytes of
	// every unit so a substring key is a cheap slice conversion.
	raw := make([]byte, 2*len(units))
	for i, u := range units {
		raw[2*i], raw[2*i+1] = byte(u>>8), byte(u)
	}
	key := func(from, to int) string { return string(raw[2*from : 2*to]) }

	dictionary := make(map[string]int)
	toCreate := make(map[string]bool)
	enlargeIn, dictSize, numBits := 2, 3, 2
	w := &bitWriter{bitsPerChar: bitsPerChar, char: char}

	enlarge := func() {
		enlargeIn--
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}

	// emit outputs the phrase units[from:to].
	emit := func(from, to int) {
		k := key(from, to)
		if toCreate[k] {
			first := int(units[from])
			if first < 256 {
				w.write(0, numBits)
				w.write(first, 8)
			} else {
				w.write(1, numBits)
				w.write(first, 16)
			}
			enlarge()
			delete(toCreate, k)
		} else {
			w.write(dictionary[k], numBits)
		}
		enlarge()
	}

	start, end := 0, 0 // current phrase w = units[start:end]
	for i := range units {
		c := key(i, i+1)
		if _, ok := dictionary[c]; !ok {
			dictionary[c] = dictSize
			dictSize++
			toCreate[c] = true
		}

		if end > start {
			if _, ok := dictionary[key(start, i+1)]; ok && end == i {
				end = i + 1
				continue
			}
			emit(start, end)
			dictionary[key(start, i+1)] = dictSize
			dictSize++
		}
		start, end = i, i+1
	}

	if end > start {
		emit(start, end)
	}

	w.write(2, numBits)
	w.flush()
	return w.out.String()
}

func decompress(length, resetValue int, next func(int) int) ([]uint16, bool) {
	val, position, index := next(0), resetValue, 1

	read := func(bits int) int {
		result := 0
		for power := 1; power != 1<<bits; power <<= 1 {
			b := val & position
			position >>= 1
			if position == 0 {
				position = resetValue
				val = next(index)
				index++
			}
			if b > 0 {
				result |= power
			}
		}
		return result
	}

	dictionary := [][]uint16{{0}, {1}, {2}}
	enlargeIn, numBits := 4, 3

	var c []uint16
	switch read(2) {
	case 0:
		c = []uint16{uint16(read(8))}
	case 1:
		c = []uint16{uint16(read(16))}
	case 2:
		return nil, true
	default:
		return nil, false
	}
	dictionary = append(dictionary, c)
	w := c
	result := append([]uint16(nil), c...)

	for {
		if index > length {
			return nil, false
		}

		code := read(numBits)
		switch code {
		case 0:
			dictionary = append(dictionary, []uint16{uint16(read(8))})
			code = len(dictionary) - 1
			enlargeIn--
		case 1:
			dictionary = append(dictionary, []uint16{uint16(read(16))})
			code = len(dictionary) - 1
			enlargeIn--
		case 2:
			return result, true
		}

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}

		var entry []uint16
		switch {
		case code < len(dictionary):
			entry = dictionary[code]
		case code == len(dictionary):
			entry = append(append([]uint16(nil), w...), w[0])
		default:
			return nil, false
		}
		result = append(result, entry...)

		phrase := append(append([]uint16(nil), w...), entry[0])
		dictionary = append(dictionary, phrase)
		enlargeIn--
		w = entry

		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
}
