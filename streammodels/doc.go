/*
Package streammodels defines the record-stream data model shared by every package.

Key Types:

ConnectionStringBlobContainerLocator:
Addresses one blob container. Its String method never prints the connection string:

	loc, _ := NewConnectionStringBlobContainerLocator("c1", connStr, 150*time.Second)
	fmt.Println(loc)
	// streammodels.ConnectionStringBlobContainerLocator: ContainerName = c1, ConnectionString = ***, Timeout = 2m30s.

StreamConfig:
Names a stream, its access kinds, default serializer and its locators.

Operations:
A closed sum type. Each variant embeds LocatorSpecification so a caller can pin a locator:

	op := &GetLatestRecordOp{
	    RecordFilter: RecordFilter{
	        IDs:                  []StringSerializedIdentifier{{StringSerializedID: "abc", IdentifierType: StringType}},
	        ObjectTypes:          []TypeRepresentation{BytesType},
	        VersionMatchStrategy: VersionMatchAny,
	    },
	    RecordNotFoundStrategy: RecordNotFoundReturnDefault,
	}

StreamRecord:
What a get returns: store sequence number, metadata and a DescribedSerialization payload.
*/
package streammodels
