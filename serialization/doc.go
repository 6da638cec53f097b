/*
Package serialization turns objects into payload bytes for typed stream helpers.

A SerializerRepresentation names the codec:

	factory := serialization.NewFactory()
	s, err := factory.BuildSerializer(streammodels.SerializerRepresentation{Kind: streammodels.SerializationKindBSON})
	data, err := s.SerializeToBytes(order)

JSON uses encoding/json. BSON uses the MongoDB driver's bson package and wraps each value in a
single-field document, so non-document values round-trip too.
*/
package serialization
