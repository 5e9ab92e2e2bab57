package mocks

import (
	"context"
	"testing"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
)

// RollbackTx is a helper function to create a mocked StorageTx
// that expects to be rolled back and not have Commit called
func RollbackTx(t *testing.T) resonator.StorageTx {
	return &StorageTxMock{
		RollbackFunc: func() error { return nil },
	}
}

// CommitTx is a helper function to create a mocked StorageTx
// that expects to be committed, it errors if a Rollback occurs
// before a Commit
func CommitTx(t *testing.T) resonator.StorageTx {
	var commitCalled bool

	return &StorageTxMock{
		RollbackFunc: func() error {
			if !commitCalled {
				t.Error("rollback called before commit")
			}
			return nil
		},
		CommitFunc: func() error {
			commitCalled = true
			return nil
		},
	}
}

// CommitErrTx is a helper function to create a mocked StorageTx
// that has the Commit return an error
func CommitErrTx(t *testing.T) resonator.StorageTx {
	return &StorageTxMock{
		RollbackFunc: func() error {
			return nil
		},
		CommitFunc: func() error {
			return errors.E(errors.Testing)
		},
	}
}

// NotUsedTx is a mocked StorageTx that doesn't expect to be used at all
func NotUsedTx(t *testing.T) resonator.StorageTx {
	return new(StorageTxMock)
}

// TrackStore is a helper function to create a mocked StorageService
// that only hands out the given TrackStorage
func TrackStore(t *testing.T, ts resonator.TrackStorage) *StorageServiceMock {
	return &StorageServiceMock{
		TrackFunc: func(_ context.Context) resonator.TrackStorage {
			return ts
		},
		CloseFunc: func() error { return nil },
	}
}

// VitaminStore is a helper function to create a mocked StorageService
// that hands out the given TrackStorage and VitaminStorage
func VitaminStore(t *testing.T, ts resonator.TrackStorage, vs resonator.VitaminStorage) *StorageServiceMock {
	return &StorageServiceMock{
		TrackFunc: func(_ context.Context) resonator.TrackStorage {
			return ts
		},
		VitaminFunc: func(_ context.Context) resonator.VitaminStorage {
			return vs
		},
		CloseFunc: func() error { return nil },
	}
}
