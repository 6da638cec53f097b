/*
Package config loads stream definitions from YAML.

	streams:
	  - name: orders
	    provider: azure
	    serializer:
	      kind: json
	    locators:
	      - containerName: orders
	        connectionStringEnv: AZURE_STORAGE_CONNECTION_STRING
	        timeout: 30s

${VAR} references in string values are expanded from the environment, including variables
LoadEnv read from a .env file. A bare '$' is left alone, so connection strings survive intact.
Timeouts take Go duration strings such as "30s".
*/
package config
