/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package streammodels

// RecordFilter is the query shape used to select records.
type RecordFilter struct {
	InternalRecordIDs    []int64
	IDs                  []StringSerializedIdentifier
	IDTypes              []TypeRepresentation
	ObjectTypes          []TypeRepresentation
	VersionMatchStrategy VersionMatchStrategy
	Tags                 []NamedValue
	DeprecatedIDTypes    []TypeRepresentation
}

// Operation is the closed set of requests a stream understands.
type Operation interface {
	// Kind names the operation in errors and traces.
	Kind() string
	// SpecifiedLocator is the locator the caller pinned, or nil.
	SpecifiedLocator() ResourceLocator

	operation()
}

// LocatorSpecification is embedded by every operation.
type LocatorSpecification struct {
	SpecifiedResourceLocator ResourceLocator
}

func (l LocatorSpecification) SpecifiedLocator() ResourceLocator { return l.SpecifiedResourceLocator }

func (LocatorSpecification) operation() {}

// HandlingStatus is the state of a record for a handling concern.
type HandlingStatus string

const (
	HandlingStatusUnknown   HandlingStatus = "Unknown"
	HandlingStatusAvailable HandlingStatus = "AvailableByDefault"
	HandlingStatusRunning   HandlingStatus = "Running"
	HandlingStatusCompleted HandlingStatus = "Completed"
	HandlingStatusFailed    HandlingStatus = "Failed"
	HandlingStatusDisabled  HandlingStatus = "DisabledForStream"
)

type GetNextUniqueLongOp struct {
	LocatorSpecification
	Details string
}

func (GetNextUniqueLongOp) Kind() string { return "GetNextUniqueLongOp" }

type GetLatestRecordOp struct {
	LocatorSpecification
	RecordFilter           RecordFilter
	RecordNotFoundStrategy RecordNotFoundStrategy
}

func (GetLatestRecordOp) Kind() string { return "GetLatestRecordOp" }

type TryHandleRecordOp struct {
	LocatorSpecification
	Concern                 string
	RecordFilter            RecordFilter
	Details                 string
	MinimumInternalRecordID *int64
}

func (TryHandleRecordOp) Kind() string { return "TryHandleRecordOp" }

type PutRecordOp struct {
	LocatorSpecification
	Metadata               StreamRecordMetadata
	Payload                DescribedSerialization
	InternalRecordID       *int64
	ExistingRecordStrategy ExistingRecordStrategy
	RecordRetentionCount   *int
	VersionMatchStrategy   VersionMatchStrategy
}

func (PutRecordOp) Kind() string { return "PutRecordOp" }

type GetInternalRecordIDsOp struct {
	LocatorSpecification
	RecordFilter           RecordFilter
	RecordNotFoundStrategy RecordNotFoundStrategy
}

func (GetInternalRecordIDsOp) Kind() string { return "GetInternalRecordIdsOp" }

type UpdateHandlingStatusForStreamOp struct {
	LocatorSpecification
	NewStatus HandlingStatus
	Details   string
}

func (UpdateHandlingStatusForStreamOp) Kind() string { return "UpdateHandlingStatusForStreamOp" }

type GetHandlingStatusOp struct {
	LocatorSpecification
	Concern      string
	RecordFilter RecordFilter
}

func (GetHandlingStatusOp) Kind() string { return "GetHandlingStatusOp" }

type GetHandlingHistoryOp struct {
	LocatorSpecification
	InternalRecordID int64
	Concern          string
}

func (GetHandlingHistoryOp) Kind() string { return "GetHandlingHistoryOp" }

type UpdateHandlingStatusForRecordOp struct {
	LocatorSpecification
	InternalRecordID int64
	Concern          string
	NewStatus        HandlingStatus
	Details          string
}

func (UpdateHandlingStatusForRecordOp) Kind() string { return "UpdateHandlingStatusForRecordOp" }

type GetDistinctStringSerializedIDsOp struct {
	LocatorSpecification
	RecordFilter RecordFilter
}

func (GetDistinctStringSerializedIDsOp) Kind() string { return "GetDistinctStringSerializedIdsOp" }

type GetLatestStringSerializedObjectOp struct {
	LocatorSpecification
	RecordFilter           RecordFilter
	RecordNotFoundStrategy RecordNotFoundStrategy
}

func (GetLatestStringSerializedObjectOp) Kind() string { return "GetLatestStringSerializedObjectOp" }

type CreateStreamOp struct {
	LocatorSpecification
	StreamName string
}

func (CreateStreamOp) Kind() string { return "CreateStreamOp" }

type DeleteStreamOp struct {
	LocatorSpecification
	StreamName string
}

func (DeleteStreamOp) Kind() string { return "DeleteStreamOp" }

type PruneStreamOp struct {
	LocatorSpecification
	InternalRecordID int64
	Details          string
}

func (PruneStreamOp) Kind() string { return "PruneStreamOp" }
