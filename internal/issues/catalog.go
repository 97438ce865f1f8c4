package issues

// DefaultCatalog returns the built-in failure patterns. IDs are stable;
// scripts and reports reference them.
func DefaultCatalog() []KnownIssue {
	return []KnownIssue{
		{
			ID:          "disk-full",
			Title:       "Root filesystem full",
			Symptoms:    []string{"No space left on device", "services failing to write logs", "database refusing writes"},
			Cause:       "Log files, package caches, or orphaned container layers filled the root filesystem.",
			Remediation: "Check df -h and du on /var/log, /var/cache, and /var/lib/docker. Rotate or truncate large logs, run journalctl --vacuum-size, prune unused container images.",
			Tags:        []string{"disk", "storage"},
		},
		{
			ID:          "inode-exhaustion",
			Title:       "Filesystem out of inodes",
			Symptoms:    []string{"No space left on device while df shows free space", "cannot create files"},
			Cause:       "Millions of small files (session files, mail queue, cache shards) exhausted inodes even though bytes remain.",
			Remediation: "Run df -i to confirm. Locate the directory with find -xdev -type f piped through counting, then clean it up.",
			Tags:        []string{"disk", "storage"},
		},
		{
			ID:          "oom-killer",
			Title:       "Process killed by the OOM killer",
			Symptoms:    []string{"service restarts without error in its own logs", "dmesg shows Out of memory: Killed process"},
			Cause:       "Memory pressure forced the kernel to kill the largest process, often a database or JVM.",
			Remediation: "Confirm in dmesg or journalctl -k. Lower the service's memory footprint, add swap as a stopgap, or set memory limits so the right process is sacrificed.",
			Tags:        []string{"memory", "kernel"},
		},
		{
			ID:          "service-crash-loop",
			Title:       "systemd service in a restart loop",
			Symptoms:    []string{"start-limit-hit", "activating (auto-restart)", "service flapping"},
			Cause:       "The unit exits immediately on start (bad config, missing dependency, port already bound) and Restart=always keeps relaunching it.",
			Remediation: "Read journalctl -u <unit> for the first failure, fix the underlying exit, then systemctl reset-failed and restart.",
			Tags:        []string{"systemd"},
		},
		{
			ID:          "port-conflict",
			Title:       "Port already in use",
			Symptoms:    []string{"bind: address already in use", "service fails on start after redeploy"},
			Cause:       "An old instance, another service, or a container still holds the listening port.",
			Remediation: "Find the owner with ss -tlnp, stop or reconfigure it, then start the service.",
			Tags:        []string{"network"},
		},
		{
			ID:          "dns-resolution",
			Title:       "DNS resolution failing",
			Symptoms:    []string{"Temporary failure in name resolution", "timeouts to external hosts while IPs work"},
			Cause:       "Broken /etc/resolv.conf, dead upstream resolver, or systemd-resolved not running.",
			Remediation: "Check systemctl status systemd-resolved and /etc/resolv.conf. Test with a direct resolver to isolate upstream vs local failure.",
			Tags:        []string{"network", "dns"},
		},
		{
			ID:          "cert-expired",
			Title:       "TLS certificate expired",
			Symptoms:    []string{"certificate has expired", "clients failing TLS handshake after a specific date"},
			Cause:       "A certificate passed its notAfter date, usually because automated renewal broke silently.",
			Remediation: "Verify dates on the served certificate, renew it, and fix the renewal timer (certbot.timer or equivalent) so it does not recur.",
			Tags:        []string{"tls", "network"},
		},
		{
			ID:          "k8s-crashloop",
			Title:       "Pod in CrashLoopBackOff",
			Symptoms:    []string{"CrashLoopBackOff", "restart count climbing"},
			Cause:       "The container exits shortly after start: bad config/env, failing migration, or unreachable dependency.",
			Remediation: "Read kubectl logs --previous for the crash output and kubectl describe pod for events. Fix the exit cause rather than raising the backoff.",
			Tags:        []string{"kubernetes"},
		},
		{
			ID:          "k8s-imagepull",
			Title:       "Pod stuck in ImagePullBackOff",
			Symptoms:    []string{"ImagePullBackOff", "ErrImagePull"},
			Cause:       "Wrong image tag, private registry without credentials, or registry unreachable from nodes.",
			Remediation: "Check the exact image reference in kubectl describe pod, verify the tag exists, and confirm imagePullSecrets are present and valid.",
			Tags:        []string{"kubernetes"},
		},
		{
			ID:          "k8s-pending-resources",
			Title:       "Pod Pending on insufficient resources",
			Symptoms:    []string{"pod stays Pending", "FailedScheduling events", "Insufficient cpu or memory"},
			Cause:       "No node can satisfy the pod's requests, or taints and affinity rules exclude every candidate.",
			Remediation: "Read the FailedScheduling event for the exact reason. Lower requests, add capacity, or adjust tolerations and affinity.",
			Tags:        []string{"kubernetes", "scheduling"},
		},
		{
			ID:          "clock-skew",
			Title:       "System clock drifted",
			Symptoms:    []string{"TLS errors about certificate not yet valid", "auth tokens rejected", "log timestamps jumping"},
			Cause:       "NTP synchronization stopped (chronyd/systemd-timesyncd down or blocked) and the clock drifted.",
			Remediation: "Check timedatectl status. Restart the time sync service and verify the NTP servers are reachable.",
			Tags:        []string{"time"},
		},
		{
			ID:          "fd-exhaustion",
			Title:       "File descriptor limit reached",
			Symptoms:    []string{"too many open files", "accept/connect failures under load"},
			Cause:       "A process leaked descriptors or its ulimit is too low for the connection volume.",
			Remediation: "Compare ls /proc/<pid>/fd counts against limits in /proc/<pid>/limits. Raise LimitNOFILE in the unit file or fix the leak.",
			Tags:        []string{"limits"},
		},
	}
}
