package records

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Feature names used in the serialized tf.train.Example.
const (
	InputIdsKey   = "input_ids"
	InputMaskKey  = "input_mask"
	SegmentIdsKey = "segment_ids"
	LabelIdsKey   = "label_ids"
)

// Field numbers of the tf.train.Example family of messages.
const (
	exampleFeaturesField protowire.Number = 1 // Example.features
	featuresMapField     protowire.Number = 1 // Features.feature
	mapKeyField          protowire.Number = 1
	mapValueField        protowire.Number = 2
	featureInt64List     protowire.Number = 3 // Feature.int64_list
	int64ListValueField  protowire.Number = 1 // Int64List.value
)

var ErrMalformedExample = errors.New("malformed tf.train.Example")

// MarshalExample encodes the feature as a tf.train.Example with packed
// int64 lists. Map entries are written in a fixed order so output is
// byte-for-byte reproducible.
func (feature *Feature) MarshalExample() []byte {
	var features []byte
	features = appendInt64Feature(features, InputIdsKey, feature.InputIds)
	features = appendInt64Feature(features, InputMaskKey, feature.InputMask)
	features = appendInt64Feature(features, SegmentIdsKey,
		feature.SegmentIds)
	features = appendInt64Feature(features, LabelIdsKey,
		[]int64{feature.LabelId})

	example := make([]byte, 0, len(features)+8)
	example = protowire.AppendTag(example, exampleFeaturesField,
		protowire.BytesType)
	return protowire.AppendBytes(example, features)
}

func appendInt64Feature(b []byte, key string, values []int64) []byte {
	var packed []byte
	for _, value := range values {
		packed = protowire.AppendVarint(packed, uint64(value))
	}
	var int64List []byte
	int64List = protowire.AppendTag(int64List, int64ListValueField,
		protowire.BytesType)
	int64List = protowire.AppendBytes(int64List, packed)

	var featureMsg []byte
	featureMsg = protowire.AppendTag(featureMsg, featureInt64List,
		protowire.BytesType)
	featureMsg = protowire.AppendBytes(featureMsg, int64List)

	var entry []byte
	entry = protowire.AppendTag(entry, mapKeyField, protowire.BytesType)
	entry = protowire.AppendString(entry, key)
	entry = protowire.AppendTag(entry, mapValueField, protowire.BytesType)
	entry = protowire.AppendBytes(entry, featureMsg)

	b = protowire.AppendTag(b, featuresMapField, protowire.BytesType)
	return protowire.AppendBytes(b, entry)
}

// UnmarshalExample decodes a serialized tf.train.Example into a Feature.
// All four features must be present as int64 lists, the three sequences
// must be of equal length, and label_ids must hold exactly one value.
func UnmarshalExample(data []byte) (*Feature, error) {
	lists := make(map[string][]int64)
	err := walkFields(data, func(num protowire.Number, payload []byte) error {
		if num != exampleFeaturesField {
			return nil
		}
		return walkFields(payload, func(num protowire.Number,
			entry []byte) error {
			if num != featuresMapField {
				return nil
			}
			key, values, entryErr := parseFeatureEntry(entry)
			if entryErr != nil {
				return entryErr
			}
			lists[key] = values
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	feature := &Feature{}
	var ok bool
	if feature.InputIds, ok = lists[InputIdsKey]; !ok {
		return nil, missingFeature(InputIdsKey)
	}
	if feature.InputMask, ok = lists[InputMaskKey]; !ok {
		return nil, missingFeature(InputMaskKey)
	}
	if feature.SegmentIds, ok = lists[SegmentIdsKey]; !ok {
		return nil, missingFeature(SegmentIdsKey)
	}
	labelIds, ok := lists[LabelIdsKey]
	if !ok {
		return nil, missingFeature(LabelIdsKey)
	}
	if len(labelIds) != 1 {
		return nil, fmt.Errorf("%w: %s has %d values", ErrMalformedExample,
			LabelIdsKey, len(labelIds))
	}
	feature.LabelId = labelIds[0]
	if len(feature.InputMask) != len(feature.InputIds) ||
		len(feature.SegmentIds) != len(feature.InputIds) {
		return nil, fmt.Errorf("%w: sequence lengths differ (%d, %d, %d)",
			ErrMalformedExample, len(feature.InputIds),
			len(feature.InputMask), len(feature.SegmentIds))
	}
	return feature, nil
}

func missingFeature(key string) error {
	return fmt.Errorf("%w: missing feature %s", ErrMalformedExample, key)
}

// walkFields calls fn with the payload of every length-delimited field in
// b and skips all other wire types.
func walkFields(b []byte, fn func(protowire.Number, []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformedExample,
				protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: %v", ErrMalformedExample,
					protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		payload, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformedExample,
				protowire.ParseError(n))
		}
		b = b[n:]
		if err := fn(num, payload); err != nil {
			return err
		}
	}
	return nil
}

func parseFeatureEntry(entry []byte) (string, []int64, error) {
	var key string
	var values []int64
	err := walkFields(entry, func(num protowire.Number, payload []byte) error {
		switch num {
		case mapKeyField:
			key = string(payload)
		case mapValueField:
			return walkFields(payload, func(num protowire.Number,
				list []byte) error {
				if num != featureInt64List {
					return fmt.Errorf("%w: feature is not an int64 list",
						ErrMalformedExample)
				}
				parsed, listErr := parseInt64List(list)
				values = parsed
				return listErr
			})
		}
		return nil
	})
	return key, values, err
}

// parseInt64List accepts both packed and unpacked encodings of
// Int64List.value.
func parseInt64List(b []byte) ([]int64, error) {
	values := make([]int64, 0)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedExample,
				protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == int64ListValueField && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedExample,
					protowire.ParseError(n))
			}
			b = b[n:]
			for len(packed) > 0 {
				value, vn := protowire.ConsumeVarint(packed)
				if vn < 0 {
					return nil, fmt.Errorf("%w: %v", ErrMalformedExample,
						protowire.ParseError(vn))
				}
				packed = packed[vn:]
				values = append(values, int64(value))
			}
		case num == int64ListValueField && typ == protowire.VarintType:
			value, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedExample,
					protowire.ParseError(n))
			}
			b = b[n:]
			values = append(values, int64(value))
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedExample,
					protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return values, nil
}
