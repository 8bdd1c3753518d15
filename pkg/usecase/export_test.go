package usecase

// Export unexported functions for testing
var (
	GenerateUniqueNameForTest          = generateUniqueName
	RandomNameForTest                  = randomName
	CreateOrUpdateBigQueryTableForTest = createOrUpdateBigQueryTable
	FailureDetailForTest               = failureDetail
)
