package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/amirasaad/vmadmin/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVM(name string) *vm.VirtualMachine {
	return vm.New(name, vm.StatusRunning, 1, 512, decimal.NewFromInt(1), nil)
}

func TestDo_RollsBackOnError(t *testing.T) {
	uow := New()
	ctx := context.Background()
	boom := errors.New("abort")

	err := uow.Do(ctx, func(tx repository.UnitOfWork) error {
		if err := tx.VirtualMachines().Create(ctx, newVM("gone")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	vms, err := uow.VirtualMachines().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, vms)
}

func TestDo_RollbackKeepsConcurrentCommit(t *testing.T) {
	uow := New()
	ctx := context.Background()
	kept := newVM("kept")
	started := make(chan struct{})
	var wg sync.WaitGroup
	var failedErr, keptErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		failedErr = uow.Do(ctx, func(tx repository.UnitOfWork) error {
			close(started)
			if err := tx.VirtualMachines().Create(ctx, newVM("gone")); err != nil {
				return err
			}
			time.Sleep(20 * time.Millisecond)
			return errors.New("abort")
		})
	}()
	<-started
	go func() {
		defer wg.Done()
		keptErr = uow.Do(ctx, func(tx repository.UnitOfWork) error {
			return tx.VirtualMachines().Create(ctx, kept)
		})
	}()
	wg.Wait()

	require.Error(t, failedErr)
	require.NoError(t, keptErr)
	vms, err := uow.VirtualMachines().List(ctx)
	require.NoError(t, err)
	require.Len(t, vms, 1)
	assert.Equal(t, kept.ID, vms[0].ID)
}
