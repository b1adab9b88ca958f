package uplc

// Builtin identifies one of the fixed built-in functions.
// The numeric values are part of the binary program encoding
// and must not be reordered.
type Builtin uint8

const (
	AddInteger Builtin = iota
	SubtractInteger
	MultiplyInteger
	DivideInteger
	QuotientInteger
	RemainderInteger
	ModInteger
	EqualsInteger
	LessThanInteger
	LessThanEqualsInteger
	AppendByteString
	ConsByteString
	SliceByteString
	LengthOfByteString
	IndexByteString
	EqualsByteString
	LessThanByteString
	LessThanEqualsByteString
	Sha2_256
	Sha3_256
	Blake2b_256
	VerifyEd25519Signature
	AppendString
	EqualsString
	EncodeUtf8
	DecodeUtf8
	IfThenElse
	ChooseUnit
	Trace
	FstPair
	SndPair
	ChooseList
	MkCons
	HeadList
	TailList
	NullList
	ChooseData
	ConstrData
	MapData
	ListData
	IData
	BData
	UnConstrData
	UnMapData
	UnListData
	UnIData
	UnBData
	EqualsData
	MkPairData
	MkNilData
	MkNilPairData
	SerialiseData
	VerifyEcdsaSecp256k1Signature
	VerifySchnorrSecp256k1Signature

	maxBuiltin = VerifySchnorrSecp256k1Signature
)

var builtinNames = [...]string{
	AddInteger:                      "addInteger",
	SubtractInteger:                 "subtractInteger",
	MultiplyInteger:                 "multiplyInteger",
	DivideInteger:                   "divideInteger",
	QuotientInteger:                 "quotientInteger",
	RemainderInteger:                "remainderInteger",
	ModInteger:                      "modInteger",
	EqualsInteger:                   "equalsInteger",
	LessThanInteger:                 "lessThanInteger",
	LessThanEqualsInteger:           "lessThanEqualsInteger",
	AppendByteString:                "appendByteString",
	ConsByteString:                  "consByteString",
	SliceByteString:                 "sliceByteString",
	LengthOfByteString:              "lengthOfByteString",
	IndexByteString:                 "indexByteString",
	EqualsByteString:                "equalsByteString",
	LessThanByteString:              "lessThanByteString",
	LessThanEqualsByteString:        "lessThanEqualsByteString",
	Sha2_256:                        "sha2_256",
	Sha3_256:                        "sha3_256",
	Blake2b_256:                     "blake2b_256",
	VerifyEd25519Signature:          "verifyEd25519Signature",
	AppendString:                    "appendString",
	EqualsString:                    "equalsString",
	EncodeUtf8:                      "encodeUtf8",
	DecodeUtf8:                      "decodeUtf8",
	IfThenElse:                      "ifThenElse",
	ChooseUnit:                      "chooseUnit",
	Trace:                           "trace",
	FstPair:                         "fstPair",
	SndPair:                         "sndPair",
	ChooseList:                      "chooseList",
	MkCons:                          "mkCons",
	HeadList:                        "headList",
	TailList:                        "tailList",
	NullList:                        "nullList",
	ChooseData:                      "chooseData",
	ConstrData:                      "constrData",
	MapData:                         "mapData",
	ListData:                        "listData",
	IData:                           "iData",
	BData:                           "bData",
	UnConstrData:                    "unConstrData",
	UnMapData:                       "unMapData",
	UnListData:                      "unListData",
	UnIData:                         "unIData",
	UnBData:                         "unBData",
	EqualsData:                      "equalsData",
	MkPairData:                      "mkPairData",
	MkNilData:                       "mkNilData",
	MkNilPairData:                   "mkNilPairData",
	SerialiseData:                   "serialiseData",
	VerifyEcdsaSecp256k1Signature:   "verifyEcdsaSecp256k1Signature",
	VerifySchnorrSecp256k1Signature: "verifySchnorrSecp256k1Signature",
}

// Valid reports whether b names a known built-in function.
func (b Builtin) Valid() bool {
	return b <= maxBuiltin
}

func (b Builtin) String() string {
	if !b.Valid() {
		return "invalid"
	}
	return builtinNames[b]
}
