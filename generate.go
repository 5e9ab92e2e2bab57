package resonator

//go:generate moq -out mocks/resonator.gen.go -pkg mocks . StorageService StorageTx TrackStorage VitaminStorage
