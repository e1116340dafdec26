/*
Package provider defines the interface for expression-library sources in refx.

	            +-------------+
	            |  Provider   |
	            |  (Source)   |
	            +------+------+
	                   |
	            +------+------+
	            |   GitHub    |
	            |  Provider   |
	            +-------------+

🎯 Purpose:
- Abstracts expression-library retrieval
- Provides a unified interface for different sources
- Handles remote file access
- Manages source metadata (commit hash, permalinks)

🔄 Flow:
1. Receives a library definition from config
2. Connects to the source (GitHub, etc)
3. Lists library files under the configured path
4. Provides file content on demand
5. Tracks source metadata for status labels

⚡ Key Responsibilities:
- Source connection management
- File listing and retrieval
- Error handling for source access
- Metadata management

🤝 Interfaces:
- Provider: core interface for source access
- Factory: registered constructor per provider name

📝 Design Philosophy:
The provider package is the source of truth for library file content. It
abstracts away source-specific details and leaves parsing and store updates
to the operation package.

🚧 Current Issues & TODOs:
1. Rate limiting:
  - Respect GitHub secondary rate limits on large trees

2. Retries:
  - Retry transient network failures during downloads

🔍 Example:

	p, err := provider.Get(ctx, lib.Provider)
	if err != nil {
		return err
	}

	files, err := p.ListFiles(ctx, lib)
	for _, file := range files {
		rc, err := p.GetFile(ctx, lib, file)
		// ...
	}
*/
package provider
