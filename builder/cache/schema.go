package cache

// BoltDB bucket names
const (
	BucketContent = "content" // {slug} -> ContentMeta
	BucketRuns    = "runs"    // last -> RunRecord
	BucketMeta    = "meta"    // schema_version

	// Meta keys
	KeySchemaVersion = "schema_version"
	KeyLastRun       = "last"
)

// AllBuckets returns all bucket names for initialization
func AllBuckets() []string {
	return []string{
		BucketContent,
		BucketRuns,
		BucketMeta,
	}
}
