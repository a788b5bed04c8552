package ids

import "fmt"

// canonicalServiceName returns the hash input used to deterministically
// allocate a service id, per §4.4.1.
func canonicalServiceName(name string) string {
	return "Service:" + name
}

// canonicalMessageName returns the hash input used to deterministically
// allocate a message id, per §4.4.1.
func canonicalMessageName(name string) string {
	return "Message:" + name
}

// qualifiedMethodName returns the hash input used to deterministically
// allocate a method id, per §4.4.1: it is also the lockfile's method key.
func qualifiedMethodName(service, method string) string {
	return service + "." + method
}

// checkExplicit implements §4.4.3's three explicit-id checks: range,
// tombstone, and conflict with another symbol in the same space/namespace.
// A retired id still recorded against its old symbol is reported as
// Tombstoned. A violation is an error regardless of mode.
func checkExplicit(id, min, max int, usedByOther map[int]bool, tombstoned map[int]bool) error {
	if id < min || id > max {
		return newErr(OutOfRange, "id %d is outside the allowed range [%d, %d]", id, min, max)
	}
	if tombstoned[id] {
		return newErr(Tombstoned, "id %d has been retired and cannot be reused", id)
	}
	if usedByOther[id] {
		return newErr(AlreadyInUse, "id %d is already in use by another symbol", id)
	}
	return nil
}

// deterministicID implements §4.4.1/§4.4.2: hash the canonical name into
// the range, and if the candidate is used or tombstoned, probe with a
// "#k" suffix up to limit attempts.
func deterministicID(canonicalName string, min, max, limit int, used map[int]bool, tombstoned map[int]bool) (int, error) {
	candidate := mapToRange(positiveHash(canonicalName), min, max)
	if !used[candidate] && !tombstoned[candidate] {
		return candidate, nil
	}

	for k := 1; k <= limit; k++ {
		probeName := fmt.Sprintf("%s#%d", canonicalName, k)
		candidate := mapToRange(positiveHash(probeName), min, max)
		if !used[candidate] && !tombstoned[candidate] {
			return candidate, nil
		}
	}

	return 0, newErr(ProbeExhausted, "no free id found for %q in range [%d, %d] after %d probes", canonicalName, min, max, limit)
}

// AssignServiceID determines a service id: explicit wins validation, else
// deterministic allocation restricted to ids already used by other
// services and the tombstone set.
func AssignServiceID(serviceName string, explicit *int, usedByOther, tombstoned map[int]bool) (int, error) {
	if explicit != nil {
		if err := checkExplicit(*explicit, ServiceMin, ServiceMax, usedByOther, tombstoned); err != nil {
			return 0, err
		}
		return *explicit, nil
	}
	return deterministicID(canonicalServiceName(serviceName), ServiceMin, ServiceMax, globalProbeLimit, usedByOther, tombstoned)
}

// AssignMessageID determines a message id, mirroring AssignServiceID.
func AssignMessageID(messageName string, explicit *int, usedByOther, tombstoned map[int]bool) (int, error) {
	if explicit != nil {
		if err := checkExplicit(*explicit, MessageMin, MessageMax, usedByOther, tombstoned); err != nil {
			return 0, err
		}
		return *explicit, nil
	}
	return deterministicID(canonicalMessageName(messageName), MessageMin, MessageMax, globalProbeLimit, usedByOther, tombstoned)
}

// AssignMethodID determines a method id within a single service's
// namespace: usedInService and tombstonedInService are already scoped to
// that service by the caller.
func AssignMethodID(serviceName, methodName string, explicit *int, usedInService, tombstonedInService map[int]bool) (int, error) {
	if explicit != nil {
		if err := checkExplicit(*explicit, MethodMin, MethodMax, usedInService, tombstonedInService); err != nil {
			return 0, err
		}
		return *explicit, nil
	}
	return deterministicID(qualifiedMethodName(serviceName, methodName), MethodMin, MethodMax, methodProbeLimit, usedInService, tombstonedInService)
}
