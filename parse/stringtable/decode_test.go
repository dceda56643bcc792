package stringtable

import (
	"testing"
	"unicode/utf16"

	"github.com/smartystreets/goconvey/convey"
)

// utf16Bytes encodes s as BOM-marked UTF-16 test input.
func utf16Bytes(s string, bigEndian bool) []byte {
	units := append([]uint16{0xFEFF}, utf16.Encode([]rune(s))...)
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		if bigEndian {
			out = append(out, byte(u>>8), byte(u))
		} else {
			out = append(out, byte(u), byte(u>>8))
		}
	}
	return out
}

// utf32Bytes encodes s as BOM-marked UTF-32 test input.
func utf32Bytes(s string, bigEndian bool) []byte {
	runes := append([]rune{0xFEFF}, []rune(s)...)
	out := make([]byte, 0, len(runes)*4)
	for _, r := range runes {
		if bigEndian {
			out = append(out, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
		} else {
			out = append(out, byte(r), byte(r>>8), byte(r>>16), byte(r>>24))
		}
	}
	return out
}

func TestBOMDetection(t *testing.T) {
	convey.Convey("markers are matched longest first", t, func() {
		cases := []struct {
			data []byte
			enc  Encoding
			skip int
		}{
			{[]byte{0x00, 0x00, 0xFE, 0xFF, 0x00}, UTF32BE, 4},
			{[]byte{0xFF, 0xFE, 0x00, 0x00, 0x00}, UTF32LE, 4},
			{[]byte{0xFE, 0xFF, 0x00, 0x6B}, UTF16BE, 2},
			{[]byte{0xFF, 0xFE, 0x6B, 0x00}, UTF16LE, 2},
			{[]byte{0xEF, 0xBB, 0xBF, 0x6B}, UTF8, 3},
			{[]byte("plain"), UTF8, 0},
			{[]byte{0xFF, 0xFE}, UTF16LE, 2},
			{nil, UTF8, 0},
		}
		for _, c := range cases {
			enc, skip := detectBOM(c.data)
			convey.So(enc, convey.ShouldEqual, c.enc)
			convey.So(skip, convey.ShouldEqual, c.skip)
		}
	})
}

func TestEncodingEquivalence(t *testing.T) {
	convey.Convey("every BOM-marked encoding decodes to the same table", t, func() {
		src := "/* greeting */\n\"greeting\" = \"Héllo 🌍\";\n\"ok\";\n"
		want, err := Decode([]byte(src))
		convey.So(err, convey.ShouldBeNil)

		inputs := [][]byte{
			append([]byte{0xEF, 0xBB, 0xBF}, src...),
			utf16Bytes(src, true),
			utf16Bytes(src, false),
			utf32Bytes(src, true),
			utf32Bytes(src, false),
		}
		for _, in := range inputs {
			got, err := Decode(in)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldResemble, want)
		}
	})
}

func TestStrictDecoding(t *testing.T) {
	convey.Convey("malformed UTF-8 is rejected, never repaired", t, func() {
		_, err := Decode([]byte{0x61, 0xC0, 0xAF})
		convey.So(err, convey.ShouldNotBeNil)
		eerr, ok := err.(*EncodingError)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(eerr.Encoding, convey.ShouldEqual, UTF8)
	})

	convey.Convey("UTF-8 encoded surrogates are rejected", t, func() {
		_, err := Decode([]byte{0xED, 0xA0, 0x80})
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err, convey.ShouldHaveSameTypeAs, &EncodingError{})
	})

	convey.Convey("a trailing partial code unit is rejected", t, func() {
		_, err := Decode([]byte{0xFE, 0xFF, 0x00, 0x6B, 0x00})
		convey.So(err, convey.ShouldNotBeNil)
		eerr, ok := err.(*EncodingError)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(eerr.Encoding, convey.ShouldEqual, UTF16BE)
	})

	convey.Convey("an unpaired UTF-16 surrogate unit is rejected", t, func() {
		_, err := Decode([]byte{0xFE, 0xFF, 0xD8, 0x00, 0x00, 0x6B})
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err, convey.ShouldHaveSameTypeAs, &EncodingError{})
	})

	convey.Convey("UTF-32 units outside the scalar range are rejected", t, func() {
		_, err := Decode([]byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x00, 0xD8, 0x00})
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err, convey.ShouldHaveSameTypeAs, &EncodingError{})

		_, err = Decode([]byte{0x00, 0x00, 0xFE, 0xFF, 0x00, 0x11, 0x00, 0x00})
		convey.So(err, convey.ShouldNotBeNil)
		convey.So(err, convey.ShouldHaveSameTypeAs, &EncodingError{})
	})

	convey.Convey("valid non-ASCII input passes untouched", t, func() {
		f, err := Decode(utf16Bytes(`"smile" = "😀";`, false))
		convey.So(err, convey.ShouldBeNil)
		convey.So(f[0].Value, convey.ShouldEqual, "😀")
	})
}
