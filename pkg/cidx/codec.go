package cidx

import "github.com/multiformats/go-multicodec"

// Codec is a multicodec tag identifying the content a CID refers to.
// Values match the multiformats multicodec table and the constants
// exported by github.com/multiformats/go-multicodec.
type Codec uint64

const (
	CodecRaw           Codec = Codec(multicodec.Raw)           // 0x55
	CodecDagCBOR       Codec = Codec(multicodec.DagCbor)       // 0x71
	CodecGitRaw        Codec = Codec(multicodec.GitRaw)        // 0x78
	CodecDagPB         Codec = Codec(multicodec.DagPb)         // 0x70
	CodecBlake3HashSeq Codec = 0x80                            // blake3-hashseq, not in go-multicodec's table
)

func (c Codec) String() string {
	switch c {
	case CodecRaw:
		return "raw"
	case CodecDagCBOR:
		return "dag-cbor"
	case CodecGitRaw:
		return "git-raw"
	case CodecDagPB:
		return "dag-pb"
	case CodecBlake3HashSeq:
		return "blake3-hashseq"
	default:
		return multicodec.Code(c).String()
	}
}
