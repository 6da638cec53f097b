/*
Package registry maps provider names to blob capability factories.

Backends register themselves from init() functions, so a binary only needs a blank
import to make a provider available to configuration files:

	import _ "github.com/suparena/blobstream/blobstore/azure"

	capability, err := registry.NewCapability("azure")

Registered providers:
  - "azure": blobstore/azure
  - "s3": blobstore/s3
  - "dynamodb": blobstore/ddb
  - "memory": blobstore/mock

The registry is thread-safe. Registering a provider twice panics.
*/
package registry
