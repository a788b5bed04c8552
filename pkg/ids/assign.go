package ids

import (
	"github.com/mvp-express/core/pkg/schema"
)

// Mode selects how the allocator consults and mutates the lockfile, per
// §4.4.5.
type Mode int

const (
	// OFF allocates without consulting or writing the lockfile. Used only
	// for throwaway/ad-hoc generation.
	OFF Mode = iota
	// CHECK loads the lockfile and fails on any symbol not already mapped
	// or any explicit id that disagrees with it; never writes. The CI
	// mode.
	CHECK
	// WRITE loads the lockfile, allocates missing ids, overwrites on
	// explicit-vs-locked mismatch, and persists the result. The local
	// development mode.
	WRITE
)

// Assignment is the fully ID-stamped result of running the schema through
// the allocator: the service's own id, and name->id maps for its methods
// (by bare method name, unique within this one service) and its messages
// (resolved to canonical post-alias names).
type Assignment struct {
	ServiceName string
	ServiceID   int
	MethodIDs   map[string]int
	MessageIDs  map[string]int
}

// AssignAndValidate implements the per-schema assignment algorithm of
// §4.4.7: it resolves aliases, determines ids for the service, each
// method, and each message, reconciles them against lockfilePath per mode,
// and persists the updated lock only in WRITE mode.
func AssignAndValidate(s *schema.Schema, lockfilePath string, mode Mode) (*Assignment, error) {
	var lock *Lock
	var err error
	if mode == OFF {
		lock = NewLock()
	} else {
		lock, err = LoadLockfile(lockfilePath)
		if err != nil {
			return nil, err
		}
	}

	serviceName, err := resolveAlias(s.Service, lock.AliasServices)
	if err != nil {
		return nil, err
	}

	serviceID, err := reconcileServiceID(lock, serviceName, s.ID, mode)
	if err != nil {
		return nil, err
	}

	methodIDs := make(map[string]int, len(s.Methods))
	usedInService := lock.MethodsUsedInService(serviceName)
	tombstonedInService := lock.TombstonesForService(serviceName)
	for _, m := range s.Methods {
		qualified := qualifiedMethodName(serviceName, m.Name)

		// Exclude this method's own prior assignment from the "used by
		// another symbol" set so re-running assignment on an unchanged
		// schema is idempotent.
		usedByOther := withoutKey(usedInService, lock.Methods[qualified])

		id, err := reconcileMethodID(lock, serviceName, m.Name, qualified, m.ID, usedByOther, tombstonedInService, mode)
		if err != nil {
			return nil, err
		}
		methodIDs[m.Name] = id
		usedInService[id] = true
	}

	messageIDs := make(map[string]int, len(s.Messages))
	for _, msg := range s.Messages {
		canonicalName, err := resolveAlias(msg.Name, lock.AliasMessages)
		if err != nil {
			return nil, err
		}

		id, err := reconcileMessageID(lock, canonicalName, msg.ID, mode)
		if err != nil {
			return nil, err
		}
		messageIDs[canonicalName] = id
	}

	if mode == WRITE {
		if err := SaveLockfile(lock, lockfilePath); err != nil {
			return nil, err
		}
	}

	return &Assignment{
		ServiceName: serviceName,
		ServiceID:   serviceID,
		MethodIDs:   methodIDs,
		MessageIDs:  messageIDs,
	}, nil
}

// resolveAlias follows old->new chains up to maxAliasHops. Unlike the
// pre-distillation source (which silently returns the last name reached
// after 10 hops), a non-terminating chain is a hard failure here, matching
// §4.4.6's "if the chain does not terminate, fail".
func resolveAlias(name string, aliases map[string]string) (string, error) {
	current := name
	for hop := 0; hop < maxAliasHops; hop++ {
		next, ok := aliases[current]
		if !ok {
			return current, nil
		}
		current = next
	}
	if _, stillChains := aliases[current]; stillChains {
		return "", newErr(AliasCycle, "alias chain for %q did not terminate within %d hops", name, maxAliasHops)
	}
	return current, nil
}

// lookupAcrossRename resolves the lockfile id for a canonical (already
// alias-resolved) name. A schema may already spell a symbol by its new name
// while the lock entry backing that id is still filed under an older name
// that renamed into it (the alias map records old->new, but nothing walks
// the lock forward to migrate the stored key until this runs). This walks
// every alias source, forward-resolves it, and if it lands on canonicalName
// adopts that source's lock entry — so a rename preserves its numeric id
// the very next time the schema is regenerated, not just the one after.
func lookupAcrossRename(canonicalName string, aliases map[string]string, ids map[string]int) (id int, sourceKey string, found bool) {
	if id, ok := ids[canonicalName]; ok {
		return id, canonicalName, true
	}
	for old := range aliases {
		resolved, err := resolveAlias(old, aliases)
		if err != nil || resolved != canonicalName {
			continue
		}
		if id, ok := ids[old]; ok {
			return id, old, true
		}
	}
	return 0, "", false
}

// migrate moves an id entry from its (possibly stale, pre-rename) source
// key to the canonical key, so the lockfile converges onto current names
// over successive WRITE runs while the alias record itself is kept for
// history.
func migrate(ids map[string]int, sourceKey, canonicalName string, id int) {
	if sourceKey != "" && sourceKey != canonicalName {
		delete(ids, sourceKey)
	}
	ids[canonicalName] = id
}

func reconcileServiceID(lock *Lock, serviceName string, explicit *int, mode Mode) (int, error) {
	locked, lockedKey, hasLocked := lookupAcrossRename(serviceName, lock.AliasServices, lock.Services)
	usedByOther := invertExcludingKeys(lock.Services, serviceName, lockedKey)

	if explicit == nil && hasLocked {
		if mode == WRITE {
			migrate(lock.Services, lockedKey, serviceName, locked)
		}
		return locked, nil
	}
	if explicit == nil && mode == CHECK {
		return 0, newErr(MissingInLockCheckMode, "service %q has no lockfile entry; run WRITE mode locally first", serviceName)
	}

	id, err := AssignServiceID(serviceName, explicit, usedByOther, lock.TombstoneServices)
	if err != nil {
		return 0, err
	}
	if hasLocked && locked != id && mode == CHECK {
		return 0, newErr(LockDrift, "service %q locked id %d disagrees with resolved id %d", serviceName, locked, id)
	}
	if mode == WRITE || mode == OFF {
		migrate(lock.Services, lockedKey, serviceName, id)
	}
	return id, nil
}

func reconcileMethodID(lock *Lock, serviceName, methodName, qualified string, explicit *int, usedByOther, tombstoned map[int]bool, mode Mode) (int, error) {
	locked, hasLocked := lock.Methods[qualified]

	if explicit == nil && hasLocked {
		return locked, nil
	}
	if explicit == nil && mode == CHECK {
		return 0, newErr(MissingInLockCheckMode, "method %q has no lockfile entry; run WRITE mode locally first", qualified)
	}

	id, err := AssignMethodID(serviceName, methodName, explicit, usedByOther, tombstoned)
	if err != nil {
		return 0, err
	}
	if hasLocked && locked != id && mode == CHECK {
		return 0, newErr(LockDrift, "method %q locked id %d disagrees with resolved id %d", qualified, locked, id)
	}
	if mode == WRITE || mode == OFF {
		lock.Methods[qualified] = id
	}
	return id, nil
}

func reconcileMessageID(lock *Lock, canonicalName string, explicit *int, mode Mode) (int, error) {
	locked, lockedKey, hasLocked := lookupAcrossRename(canonicalName, lock.AliasMessages, lock.Messages)
	usedByOther := invertExcludingKeys(lock.Messages, canonicalName, lockedKey)

	if explicit == nil && hasLocked {
		// WRITE and OFF both migrate in-memory so later messages in this
		// same run see the canonical key via usedByOther; only WRITE
		// persists the lock to disk afterward.
		if mode == WRITE || mode == OFF {
			migrate(lock.Messages, lockedKey, canonicalName, locked)
		}
		return locked, nil
	}
	if explicit == nil && mode == CHECK {
		return 0, newErr(MissingInLockCheckMode, "message %q has no lockfile entry; run WRITE mode locally first", canonicalName)
	}

	id, err := AssignMessageID(canonicalName, explicit, usedByOther, lock.TombstoneMessages)
	if err != nil {
		return 0, err
	}
	if hasLocked && locked != id && mode == CHECK {
		return 0, newErr(LockDrift, "message %q locked id %d disagrees with resolved id %d", canonicalName, locked, id)
	}
	if mode == WRITE || mode == OFF {
		migrate(lock.Messages, lockedKey, canonicalName, id)
	}
	return id, nil
}

func invertExcludingKeys(m map[string]int, exceptNames ...string) map[int]bool {
	out := make(map[int]bool, len(m))
	for name, id := range m {
		excluded := false
		for _, except := range exceptNames {
			if name == except {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out[id] = true
	}
	return out
}

func withoutKey(m map[int]bool, id int) map[int]bool {
	out := make(map[int]bool, len(m))
	for k, v := range m {
		if k == id {
			continue
		}
		out[k] = v
	}
	return out
}
