package resample

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// sigDomain versions the signature scheme; bump it when the component
// encoding changes so stale comparisons can never produce false hits.
const sigDomain = "binview/view/v1"

// sigComponent is one dimension's contribution to the structural cache
// signature. Values are strings, numbers, bools or nested maps.
type sigComponent map[string]any

// signatureOf hashes the per-dimension components into a structural cache
// key. Encoding is canonical: object keys sorted, strings NFC-normalized,
// floats rendered with the shortest round-trip form. The hash is SHA-256
// with a domain prefix and a null separator.
func signatureOf(components map[string]sigComponent) string {
	obj := make(map[string]any, len(components))
	for dim, c := range components {
		obj[dim] = map[string]any(c)
	}
	var b strings.Builder
	encodeCanonical(&b, obj)

	h := sha256.New()
	h.Write([]byte(sigDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(b.String()))
	return hex.EncodeToString(h.Sum(nil))
}

func encodeCanonical(b *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(strconv.Quote(norm.NFC.String(val)))
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case int:
		b.WriteString(strconv.Itoa(val))
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(norm.NFC.String(k)))
			b.WriteByte(':')
			encodeCanonical(b, val[k])
		}
		b.WriteByte('}')
	default:
		// Unreachable for components built by this package.
		b.WriteString(strconv.Quote(fmt.Sprintf("%v", val)))
	}
}
