/*
Package operation implements the sync pipeline that pulls shared expression
libraries into the local store.

	+-------------+
	|  Operation  |
	|   (Sync)    |
	+------+------+
	       |
	+------+------+
	|    Apply    |
	|  (Upsert)   |
	+------+------+

🎯 Purpose:
- Orchestrates pulling library files from providers
- Parses library files into expressions and groups
- Coordinates between provider (source) and status (tracking)

🔄 Flow:
1. Resolves the provider for each configured library
2. Lists and filters library files (ignore globs)
3. Downloads files concurrently, bounded
4. Applies files sequentially in file order
5. Records per-entry outcomes via status

⚡ Key Responsibilities:
- Library file selection and parsing
- Outcome classification (new, updated, unchanged, skipped)
- Ordered store updates
- Error handling: the first failing library aborts the sync

🤝 Interfaces:
- Provider: source of truth for library files
- Store: receives expressions and groups
- status.Manager: tracks per-entry outcomes

📝 Design Philosophy:
Downloads are the only concurrent part; everything that mutates the store
runs sequentially in file order so library authors control the resulting
collection order. The operator never writes the config file itself — callers
persist after a successful sync.
*/
package operation
